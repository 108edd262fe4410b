package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update the student profile",
	RunE:  runProfileShow,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the student profile",
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields; unset flags are left unchanged",
	Example: `  studybuddy profile set --name Asha --class 9
  studybuddy profile set --board ICSE`,
	RunE: runProfileSet,
}

func init() {
	profileSetCmd.Flags().String("name", "", "Student name")
	profileSetCmd.Flags().String("class", "", "Class or grade, e.g. 10")
	profileSetCmd.Flags().String("board", "", "Examination board, e.g. CBSE")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	printProfile(a.session.Profile())
	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	var u session.ProfileUpdate
	for flag, field := range map[string]**string{
		"name":  &u.Name,
		"class": &u.ClassName,
		"board": &u.Board,
	} {
		if cmd.Flags().Changed(flag) {
			v, _ := cmd.Flags().GetString(flag)
			*field = &v
		}
	}
	if u.Name == nil && u.ClassName == nil && u.Board == nil {
		return fmt.Errorf("nothing to update: pass --name, --class or --board")
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	a.session.UpdateProfile(u)
	printProfile(a.session.Profile())
	return nil
}

func printProfile(p session.Profile) {
	fmt.Println(theme.Render(theme.Title, "Profile"))
	fmt.Printf("%s %s\n", theme.Render(theme.Label, "Name: "), p.Name)
	fmt.Printf("%s %s\n", theme.Render(theme.Label, "Class:"), p.ClassName)
	fmt.Printf("%s %s\n", theme.Render(theme.Label, "Board:"), p.Board)
}
