package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestConsoleLogger(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	quiet := NewWithWriter(&buf, false)
	quiet.Debugf("hidden %d", 1)
	quiet.Infof("shown %d", 2)
	quiet.Errorf("failed %s", "here")

	expect := "[INFO] shown 2\n[ERROR] failed here\n"
	if buf.String() != expect {
		t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", expect, buf.String())
	}

	buf.Reset()
	verbose := NewWithWriter(&buf, true)
	verbose.Debugf("[ huffman.Encode ] length: %v", 15)
	if !strings.Contains(buf.String(), "[DEBUG] [ huffman.Encode ] length: 15") {
		t.Errorf("missing debug line: %q", buf.String())
	}
}
