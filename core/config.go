package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host            string
		Address         string
		DebugHost       string
		ReadTimeout     time.Duration
		WriteTimeout    time.Duration
		ShutdownTimeout time.Duration
		BodyLimit       string
		AllowedOrigins  []string
		DisableReqLogs  bool
	}

	InterpreterConfig struct {
		MaxSourceLength int
		MaxNestingDepth int
		MaxExprDepth    int
	}

	Config struct {
		Env          string
		Build        string
		Debug        bool
		TestMode     bool
		AppName      string
		RollbarToken string
		WorkDir      string
		Server       ServerConfig
		Interpreter  InterpreterConfig
	}
)

// NewConfig loads the Config and exits the program if it is invalid.
func NewConfig() *Config {
	conf, err := LoadConfig()
	if err != nil {
		log.Fatalf("%+v", err)
	}
	return conf
}

// LoadConfig reads the configuration of the environment named by ENV
// (DEV by default) from defaults, an optional config/.env.<env> file and
// <ENV>_ prefixed environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Mr Pseudo")
	v.SetDefault("build", "dev")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":5001")
	v.SetDefault("server.debugHost", ":5002")
	v.SetDefault("server.readTimeout", 5*time.Second)
	v.SetDefault("server.writeTimeout", 10*time.Second)
	v.SetDefault("server.shutdownTimeout", 10*time.Second)
	v.SetDefault("server.bodyLimit", "1M")
	v.SetDefault("server.allowedOrigins", []string{"*"})
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("interpreter.maxSourceLength", 64*1024)
	v.SetDefault("interpreter.maxNestingDepth", 100)
	v.SetDefault("interpreter.maxExprDepth", 200)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	case "QA", "PROD":
		v.SetDefault("debug", false)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	wd := Getwd()
	if wd != "" {
		dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
		}
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:          env,
		Build:        v.GetString("build"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		AppName:      v.GetString("appName"),
		RollbarToken: v.GetString("rollbarToken"),
		WorkDir:      wd,
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Address:         v.GetString("server.address"),
			DebugHost:       v.GetString("server.debugHost"),
			ReadTimeout:     v.GetDuration("server.readTimeout"),
			WriteTimeout:    v.GetDuration("server.writeTimeout"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			BodyLimit:       v.GetString("server.bodyLimit"),
			AllowedOrigins:  v.GetStringSlice("server.allowedOrigins"),
			DisableReqLogs:  v.GetBool("server.disableReqLogs"),
		},
		Interpreter: InterpreterConfig{
			MaxSourceLength: v.GetInt("interpreter.maxSourceLength"),
			MaxNestingDepth: v.GetInt("interpreter.maxNestingDepth"),
			MaxExprDepth:    v.GetInt("interpreter.maxExprDepth"),
		},
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate checks the invariants the rest of the app relies on.
func (c *Config) Validate() (err error) {
	defer func() {
		if err != nil {
			err = errors.Wrap(err, "invalid config")
		}
	}()
	return vala.BeginValidation().Validate(
		vala.StringNotEmpty(c.Server.Address, "server.address"),
		vala.StringNotEmpty(c.Server.BodyLimit, "server.bodyLimit"),
		vala.GreaterThan(c.Interpreter.MaxSourceLength, 0, "interpreter.maxSourceLength"),
		vala.GreaterThan(c.Interpreter.MaxNestingDepth, 0, "interpreter.maxNestingDepth"),
		vala.GreaterThan(c.Interpreter.MaxExprDepth, 0, "interpreter.maxExprDepth"),
	).Check()
}
