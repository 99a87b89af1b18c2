package tests

import (
	"bytes"
	"os"
	"testing"

	. "github.com/theGnaNtechHub/Elearn/apps/api/echo"
	"github.com/theGnaNtechHub/Elearn/core/pseudo"
	"github.com/theGnaNtechHub/Elearn/tests"
)

var (
	app    *Server
	logBuf *bytes.Buffer
)

func TestMain(m *testing.M) {
	conf := testutil.NewConfig()
	logger, buf := testutil.NewLogger(conf)
	logBuf = buf
	validate, translator := testutil.NewValidate()

	// set up server
	app = NewServer(
		ServerDeps{
			Conf:       conf,
			Logger:     logger,
			PseudoSvc:  pseudo.NewService(conf),
			Validate:   validate,
			Translator: translator,
		},
	)

	// run tests
	code := m.Run()

	// clean up
	_ = app.Close()

	os.Exit(code)
}
