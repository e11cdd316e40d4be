package cmd

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Print the firelist version and build time.",
		Usage: "firelist version",
		Run: func(_ *Globals, _ []string) error {
			printVersion()
			return nil
		},
	})
}
