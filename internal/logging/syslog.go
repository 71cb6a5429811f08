package logging

import (
	"log/syslog"

	"github.com/rs/zerolog"
)

type syslogSink interface {
	zerolog.SyslogWriter
	Close() error
}

func dialSyslog(target, tag string) (syslogSink, error) {
	return syslog.Dial("udp", target, syslog.LOG_INFO|syslog.LOG_USER, tag)
}
