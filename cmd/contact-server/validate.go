package main

import (
	"fmt"

	"contact-form/internal/contact"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var fields contact.FieldSet

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate contact form values without starting a server",
		Long: `validate runs the contact form rules over the given values.

Each failing field is printed as one "Error: ..." line in form order and the
command exits non-zero. Valid values are printed the way the form displays
them after a submit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			res := contact.Submit(fields)
			if !res.OK {
				for _, line := range res.Errors.Lines() {
					fmt.Fprintln(out, line)
				}
				return fmt.Errorf("contact form is invalid: %d error(s)", len(res.Errors))
			}

			d := contact.Project(contact.FieldSet{}, nil, res.Snapshot).Display
			fmt.Fprintf(out, "First Name: %s\n", d.FirstName)
			fmt.Fprintf(out, "Last Name: %s\n", d.LastName)
			fmt.Fprintf(out, "Email: %s\n", d.Email)
			if d.Message != nil {
				fmt.Fprintf(out, "Message: %s\n", *d.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fields.FirstName, "first-name", "", "first name (at least 5 characters)")
	cmd.Flags().StringVar(&fields.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&fields.Email, "email", "", "email address")
	cmd.Flags().StringVar(&fields.Message, "message", "", "optional message")
	return cmd
}
