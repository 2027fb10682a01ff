package run

import (
	"github.com/flarebyte/seshat-tally/internal/config"
	"github.com/spf13/pflag"
)

// Flags holds the command-line values shared by the report and diagnose
// commands. Empty values defer to the config file or the defaults.
type Flags struct {
	Config      string
	Format      string
	Delimiter   string
	Ragged      string
	Sheet       string
	Filter      string
	DefaultPath string
	LogLevel    string
}

// BindInput registers the flags that shape how the input is read.
func (f *Flags) BindInput(fs *pflag.FlagSet) {
	fs.StringVarP(&f.Config, "config", "c", "", "Path to config file (.cue)")
	fs.StringVar(&f.Delimiter, "delimiter", "", `Single-character field delimiter (default ",")`)
	fs.StringVar(&f.Ragged, "ragged", "", "Ragged row policy: absent|strict (default absent)")
	fs.StringVar(&f.Sheet, "sheet", "", "Worksheet for .xlsx inputs (default: first sheet)")
	fs.StringVar(&f.Filter, "filter", "", `Lua row predicate, e.g. row.region == "north"`)
	fs.StringVar(&f.DefaultPath, "default-path", "", "Path used when csv_path is omitted")
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level: debug|info|warn|error (default warn)")
}

// Bind registers every report flag.
func (f *Flags) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&f.Format, "format", "f", "", "Output format: text|table|json|yaml (default text)")
	f.BindInput(fs)
}

func (f Flags) overrides() config.Overrides {
	return config.Overrides{
		ConfigPath:  f.Config,
		DefaultPath: f.DefaultPath,
		Delimiter:   f.Delimiter,
		Ragged:      f.Ragged,
		Sheet:       f.Sheet,
		Filter:      f.Filter,
		Format:      f.Format,
		LogLevel:    f.LogLevel,
	}
}
