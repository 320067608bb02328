package renderer

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/golang/glog"
)

// glogLogger implements core.Logger on top of glog's info log
type glogLogger struct{}

// NewGlogLogger returns a logger that writes through glog.Infof
func NewGlogLogger() core.Logger {
	return glogLogger{}
}

func (glogLogger) Printf(format string, args ...interface{}) {
	glog.Infof(format, args...)
}
