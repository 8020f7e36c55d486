package gekko

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterLogger(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWriterLogger("editor", false, &out, &errOut)

	l.Debugf("hidden %d", 1)
	l.Infof("hello %s", "world")
	l.Warnf("careful")
	l.Errorf("broken: %v", "link")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[editor] INFO: hello world")
	assert.Contains(t, errOut.String(), "[editor] WARN: careful")
	assert.Contains(t, errOut.String(), "[editor] ERROR: broken: link")

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("shown %d", 2)
	assert.Contains(t, out.String(), "DEBUG: shown 2")
}

func TestAppLoggerFallsBackToNop(t *testing.T) {
	app := NewAppBuilder().Build()
	assert.NotNil(t, app.Logger())
	assert.False(t, app.Logger().DebugEnabled())

	var nilApp *App
	assert.NotNil(t, nilApp.Logger())
}

func TestLoggingModuleInstallsDefault(t *testing.T) {
	app := NewAppBuilder().UseModule(LoggingModule{Prefix: "x", Debug: true}).Build()
	l, ok := Resource[DefaultLogger](app)
	assert.True(t, ok)
	assert.Same(t, l, app.Logger())
	assert.True(t, l.DebugEnabled())
}
