package logger

import (
	"io"
	"log"
	"os"
)

const prefix = "VIRTFOO "

// New returns a logger writing to path, or to stdout when path is empty.
func New(path string) (*log.Logger, error) {
	if len(path) == 0 {
		return log.New(os.Stdout, prefix, log.Ldate|log.Ltime|log.Lshortfile), nil
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
	if err != nil {
		return nil, err
	}
	l := log.New(f, prefix, log.Ldate|log.Ltime|log.Lshortfile)
	l.Printf("Initializing %s", path)
	return l, nil
}

// To returns a logger writing to w, used by the interactive console
func To(w io.Writer) *log.Logger {
	return log.New(w, prefix, log.Ltime)
}
