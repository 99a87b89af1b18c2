/*
	Project: Elearn - pseudo-code playground backend for the Elearn learning platform.
	Target: beginners writing their first programs (flowcharts & pseudo-code).
*/
package elearn

/*
TODO: language
	- `while ... do ... endwhile` loops: needs a step budget per evaluation so infinite loops stop
	- `input` statement: the editor would have to send the values up front with the code

TODO: api
	- return the column of each error too (the lexer & parser already track it)

TODO: cli
	- `pseudo fmt FILE`: normalise keyword case & indentation of if blocks
*/
