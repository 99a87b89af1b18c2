package testutil

import (
	"bytes"
	"log"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/theGnaNtechHub/Elearn/core"
	logsvc "github.com/theGnaNtechHub/Elearn/services/logger"
)

// NewConfig returns a TEST Config that never touches the environment.
func NewConfig() *core.Config {
	conf := &core.Config{
		Env:      "TEST",
		Build:    "test",
		TestMode: true,
		AppName:  "Mr Pseudo",
		Server: core.ServerConfig{
			Host:            "localhost",
			Address:         ":0",
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
			BodyLimit:       "64K",
			AllowedOrigins:  []string{"*"},
			DisableReqLogs:  true,
		},
		Interpreter: core.InterpreterConfig{
			MaxSourceLength: 4096,
			MaxNestingDepth: 10,
			MaxExprDepth:    50,
		},
	}
	if err := conf.Validate(); err != nil {
		log.Fatalf("NewConfig() failed: %v", err)
	}
	return conf
}

// NewLogger returns a disabled RollbarLogger writing into the returned buffer.
func NewLogger(conf *core.Config) (*logsvc.RollbarLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logsvc.NewRollbarLogger(log.New(&buf, "TEST : ", 0), conf)
	logger.Enable(false)
	return logger, &buf
}

// NewValidate returns a validator and its translator set up like the API's.
func NewValidate() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	return validate, translator
}
