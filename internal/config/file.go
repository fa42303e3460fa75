package config

// File represents the structure of the .reportindex configuration file.
// Every field is optional. CLI flags override the values found here.
type File struct {
	// ReportsDir is the directory scanned for report folders.
	ReportsDir string `yaml:"reportsDir,omitempty"`

	// Output is the path of the generated index.
	Output string `yaml:"output,omitempty"`

	// Title is the page title and heading.
	Title string `yaml:"title,omitempty"`

	// URLPrefix is prepended to every report link.
	URLPrefix string `yaml:"urlPrefix,omitempty"`

	// Format is one of html, markdown or json.
	Format string `yaml:"format,omitempty"`

	// SkipHidden excludes dot-directories.
	SkipHidden bool `yaml:"skipHidden,omitempty"`

	// History records every generation in the history store.
	History bool `yaml:"history,omitempty"`

	// HistoryLimit is the number of generations the history command prints.
	HistoryLimit int `yaml:"historyLimit,omitempty"`

	// DBDir overrides the directory holding the history database.
	DBDir string `yaml:"dbDir,omitempty"`
}

// ApplyFile copies the values set in f onto c.
// Empty values leave the current setting untouched.
func (c *Config) ApplyFile(f *File) error {
	if f == nil {
		return nil
	}

	if f.ReportsDir != "" {
		c.ReportsDir = f.ReportsDir
	}
	if f.Output != "" {
		c.Output = f.Output
	}
	if f.Title != "" {
		c.Title = f.Title
	}
	if f.URLPrefix != "" {
		c.URLPrefix = f.URLPrefix
	}
	if f.Format != "" {
		if err := c.SetFormat(f.Format); err != nil {
			return err
		}
	}
	if f.SkipHidden {
		c.SkipHidden = true
	}
	if f.History {
		c.History = true
	}
	if f.HistoryLimit != 0 {
		c.HistoryLimit = f.HistoryLimit
	}
	if f.DBDir != "" {
		c.DBDir = f.DBDir
	}
	return nil
}
