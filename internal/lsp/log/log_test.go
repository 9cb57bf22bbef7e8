package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetOutput(t *testing.T) {
	t.Cleanup(func() { SetOutput(nil) })

	SetOutput(nil)
	assert.False(t, Enabled())
	Server("dropped %d", 1)

	var buf bytes.Buffer
	SetOutput(&buf)
	assert.True(t, Enabled())
	Server("opened %s", "a.saty")
	Format("took %dms", 3)

	out := buf.String()
	assert.Contains(t, out, `msg="opened a.saty"`)
	assert.Contains(t, out, "component=server")
	assert.Contains(t, out, `msg="took 3ms"`)
	assert.Contains(t, out, "component=format")
	assert.NotContains(t, out, "dropped")
}
