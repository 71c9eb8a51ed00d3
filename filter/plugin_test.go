package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlugin struct {
	filters []Filter
	verbs   []string
}

func (p *fakePlugin) Filters() []Filter { return p.filters }

func (p *fakePlugin) RegisterCommands(cmd CommandLine) error {
	for _, v := range p.verbs {
		if err := cmd.RegisterCommand(v, func([]string) error { return nil }); err != nil {
			return err
		}
	}
	return nil
}

type recordingHost struct {
	registered []string
}

func (h *recordingHost) RegisterCommand(name string, _ func(args []string) error) error {
	h.registered = append(h.registered, name)
	return nil
}

func TestRegisterPlugin(t *testing.T) {
	reg := NewRegistry(nil)
	host := &recordingHost{}
	p := &fakePlugin{
		filters: []Filter{
			newMockFilter("aaa", "Format A (*.aaa)"),
			newMockFilter("bbb", "Format B (*.bbb)"),
		},
		verbs: []string{"a-export", "b-export"},
	}

	require.NoError(t, RegisterPlugin(reg, p, host))

	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"a-export", "b-export"}, host.registered)
}

func TestRegisterPluginNilPluginIsNoOp(t *testing.T) {
	reg := NewRegistry(nil)
	require.NoError(t, RegisterPlugin(reg, nil, &recordingHost{}))
	assert.Equal(t, 0, reg.Len())
}

func TestRegisterPluginNilHostSkipsCommands(t *testing.T) {
	reg := NewRegistry(nil)
	p := &fakePlugin{
		filters: []Filter{newMockFilter("ccc", "Format C (*.ccc)")},
		verbs:   []string{"never-registered"},
	}

	require.NoError(t, RegisterPlugin(reg, p, nil))
	assert.Equal(t, 1, reg.Len())
}
