package cli

type RootArgs struct {
	logLevel  *string
	logFormat *string
	path      *string
	config    *string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{
		logLevel:  new(string),
		logFormat: new(string),
		path:      new(string),
		config:    new(string),
	}
}

func (a *RootArgs) GetLogLevel() string {
	return *a.logLevel
}

func (a *RootArgs) GetLogFormat() string {
	return *a.logFormat
}

// GetPath returns the project root given on the command line, if any.
func (a *RootArgs) GetPath() string {
	return *a.path
}

// GetConfig returns the configuration file given on the command line, if any.
func (a *RootArgs) GetConfig() string {
	return *a.config
}
