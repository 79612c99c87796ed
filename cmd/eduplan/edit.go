package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/eduplan/internal/types"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Write the idea, a profile field or a section body",
	Long:  `Write part of the stored plan. A value of "-" reads the text from standard input.`,
}

var setIdeaCmd = &cobra.Command{
	Use:   "idea <text>",
	Short: "Replace the business idea",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetIdea,
}

var setFieldCmd = &cobra.Command{
	Use:   "field <field> <text>",
	Short: "Write one company profile field",
	Args:  cobra.ExactArgs(2),
	RunE:  runSetField,
}

var setSectionCmd = &cobra.Command{
	Use:   "section <section-id> <text>",
	Short: "Write the body of a section",
	Args:  cobra.ExactArgs(2),
	RunE:  runSetSection,
}

func init() {
	setCmd.AddCommand(setIdeaCmd)
	setCmd.AddCommand(setFieldCmd)
	setCmd.AddCommand(setSectionCmd)
	rootCmd.AddCommand(setCmd)
}

// argValue returns arg, or standard input when arg is "-"
func argValue(cmd *cobra.Command, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func runSetIdea(cmd *cobra.Command, args []string) error {
	value, err := argValue(cmd, args[0])
	if err != nil {
		return err
	}
	req := types.SetIdeaRequest{Idea: value}
	if err := req.Validate(); err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	a.planner.SetIdea(req.Idea)
	return nil
}

func runSetField(cmd *cobra.Command, args []string) error {
	field, err := types.ParseProfileField(args[0])
	if err != nil {
		return err
	}
	value, err := argValue(cmd, args[1])
	if err != nil {
		return err
	}
	req := types.SetTextRequest{Value: value}
	if err := req.Validate(); err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.planner.SetProfileField(field, req.Value)
}

func runSetSection(cmd *cobra.Command, args []string) error {
	value, err := argValue(cmd, args[1])
	if err != nil {
		return err
	}
	req := types.SetTextRequest{Value: value}
	if err := req.Validate(); err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.planner.SetSectionContent(args[0], req.Value)
}
