package logsvc

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"

	glog "github.com/labstack/gommon/log"
	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/theGnaNtechHub/Elearn/core"
)

// RollbarLogger prints to a standard logger and reports to Rollbar.
type RollbarLogger struct {
	std   *log.Logger
	level glog.Lvl
	app   string
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)

	level := glog.INFO
	if conf.Debug {
		level = glog.DEBUG
	}
	return &RollbarLogger{std: std, level: level, app: conf.AppName}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// SetLevel sets the lowest level that gets printed; reports are not filtered.
func (l *RollbarLogger) SetLevel(level glog.Lvl) {
	l.level = level
}

// prepare builds rollbar's args. Rollbar keeps a single extras map,
// so every map arg is merged into one.
// expected fmt: msg | error, map[string]interface{}, *http.Request
func (l RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	extras := map[string]interface{}{"app": l.app}
	newArgs := make([]interface{}, 0, len(args)+2)
	newArgs = append(newArgs, msg)
	for _, arg := range args {
		if m, ok := arg.(map[string]interface{}); ok {
			for k, v := range m {
				extras[k] = v
			}
			continue
		}
		newArgs = append(newArgs, arg)
	}
	return append(newArgs, extras)
}

func (l RollbarLogger) print(level glog.Lvl, msg string, args []interface{}) {
	if level < l.level {
		return
	}
	l.std.Printf("%s %s\n", levelNames[level], msg)
	for _, arg := range args {
		switch v := arg.(type) {
		case *http.Request:
			l.std.Printf("request: %s %s\n", v.Method, v.URL.Path)
		case map[string]interface{}:
			l.std.Println(formatFields(v))
		default:
			l.std.Printf("%+v\n", arg)
		}
	}
}

// fatal messages are printed at every level
const fatal = glog.OFF

var levelNames = map[glog.Lvl]string{
	glog.DEBUG: "DEBUG",
	glog.INFO:  "INFO",
	glog.WARN:  "WARN",
	glog.ERROR: "ERROR",
	fatal:      "FATAL",
}

// formatFields renders m as sorted key=value pairs.
func formatFields(m map[string]interface{}) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, m[k]))
	}
	return strings.Join(pairs, " ")
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.prepare(msg, args)...)
	l.print(glog.DEBUG, msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.prepare(msg, args)...)
	l.print(glog.INFO, msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.prepare(msg, args)...)
	l.print(glog.WARN, msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	l.print(glog.ERROR, msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.prepare(msg, args)...)
	l.print(fatal, msg, args)
	rollbar.Wait()
	l.std.Fatal(msg)
}
