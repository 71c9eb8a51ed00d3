package filter

// CommandLine is the surface a command-line host exposes to filters.
// Filters may register verbs against it; the interpretation of arguments
// belongs entirely to the host.
type CommandLine interface {
	// RegisterCommand binds a verb to a handler. Returns an error if the
	// verb is already taken.
	RegisterCommand(name string, run func(args []string) error) error
}

// IOPlugin is implemented by independently compiled modules contributing
// filters. The host registers every filter a plugin exposes and offers the
// plugin a chance to register command-line verbs.
type IOPlugin interface {
	// Filters returns the filters this plugin contributes, most useful
	// first.
	Filters() []Filter
	// RegisterCommands lets the plugin expose command-line verbs. Plugins
	// with no verbs simply return nil.
	RegisterCommands(cmd CommandLine) error
}

// RegisterPlugin registers every filter of a plugin with the registry and,
// when a command-line host is supplied, its command verbs.
func RegisterPlugin(reg *Registry, p IOPlugin, cmd CommandLine) error {
	if p == nil {
		return nil
	}
	for _, f := range p.Filters() {
		reg.Register(f)
	}
	if cmd != nil {
		return p.RegisterCommands(cmd)
	}
	return nil
}
