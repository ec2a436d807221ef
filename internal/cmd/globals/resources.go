package globals

import "github.com/spf13/cobra"

// TableFlags holds the filter flags of the table command.
type TableFlags struct {
	Band           string
	Search         string
	MinTranslation int
	Retired        bool
	Active         bool
	Limit          int
}

// ParseTable extracts table flags from a command.
// The command must have had AddTableFlags called on it, otherwise this will panic.
func ParseTable(cmd *cobra.Command) *TableFlags {
	return &TableFlags{
		Band:           mustGetString(cmd, "band"),
		Search:         mustGetString(cmd, "search"),
		MinTranslation: mustGetInt(cmd, "min-translation"),
		Retired:        mustGetBool(cmd, "retired"),
		Active:         mustGetBool(cmd, "active"),
		Limit:          mustGetInt(cmd, "limit"),
	}
}

// AddTableFlags adds the table filter flags to a command.
func AddTableFlags(cmd *cobra.Command) *TableFlags {
	flags := &TableFlags{}

	cmd.Flags().StringVar(&flags.Band, "band", "",
		"Only rows in a speaker band: none, few, some, many, unknown")
	cmd.Flags().StringVar(&flags.Search, "search", "",
		"Only rows whose code or name matches: a substring, glob or regex")
	cmd.Flags().IntVar(&flags.MinTranslation, "min-translation", 0,
		"Only rows with at least this translation state (0-5)")
	cmd.Flags().BoolVar(&flags.Retired, "retired", false,
		"Only retired codes")
	cmd.Flags().BoolVar(&flags.Active, "active", false,
		"Only codes that are not retired")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0,
		"Limit number of results")

	return flags
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetInt retrieves an integer flag value or panics if the flag doesn't exist.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
