package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestAnsiToHTML(t *testing.T) {
	out := ansiToHTML("\033[32minfo\033[0m done")
	assert.Equal(t, `<pre><span style="color: green;">info</span> done</pre>`, out)

	out = ansiToHTML("\033[31merr\033[36mdbg")
	assert.Equal(t, `<pre><span style="color: red;">err</span><span style="color: cyan;">dbg</span></pre>`, out)
}

func TestBufferAndClear(t *testing.T) {
	l := New()
	l.Info("[test] hello", zap.Int("n", 3))

	html := l.HTML()
	require.Contains(t, html, "[test] hello")
	require.Contains(t, html, "n")

	l.UpdateLogs()
	require.Len(t, l.Logs, 1)

	l.ClearLogs()
	assert.Nil(t, l.Logs)
	assert.Equal(t, "<pre></pre>", l.HTML())
}

func TestWriterAndLevel(t *testing.T) {
	var out bytes.Buffer
	l := New(WithWriter(&out), WithBuffer(false), WithLevel(zapcore.WarnLevel))

	l.Debug("hidden")
	l.Warn("[test] visible")

	assert.NotContains(t, out.String(), "hidden")
	assert.True(t, strings.Contains(out.String(), "[test] visible"))
	assert.Empty(t, l.HTML())
}

func TestNamedSharesBuffer(t *testing.T) {
	l := New()
	l.Named("vnoi").Info("child")
	assert.Contains(t, l.HTML(), "vnoi")
	assert.Contains(t, l.HTML(), "child")
}

func TestNop(t *testing.T) {
	l := NewNop()
	l.Error("ignored")
	l.UpdateLogs()
	assert.Empty(t, l.Logs)
	assert.Empty(t, l.HTML())
}
