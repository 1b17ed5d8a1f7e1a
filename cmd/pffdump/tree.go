package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pffcore/pffcore/internal/msgfmt"
	"github.com/pffcore/pffcore/pff"
	"github.com/pffcore/pffcore/pff/facade"
	"github.com/pffcore/pffcore/pff/recordset"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "tree <file>",
		Short: "List the message item and its attachments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args[0])
		},
	})
}

func runTree(path string) error {
	reader, err := msgfmt.Open(path)
	if err != nil {
		return err
	}
	raw, err := os.Open(path)
	if err != nil {
		return err
	}
	defer raw.Close()
	file, err := facade.Open(raw, reader, reader)
	if err != nil {
		return err
	}

	message := file.ItemByIdentifier(msgfmt.MessageIdentifier, 0, 0, false)
	subject, _ := subjectOf(message)
	fmt.Printf("message %d: %q\n", message.Identifier(), subject)

	for _, id := range reader.Attachments() {
		att := file.ItemByIdentifier(id, 0, 0, false)
		name, err := facade.Filename(att)
		if err != nil {
			name = "(unnamed)"
		}
		typ, err := facade.GetType(att)
		if err != nil {
			fmt.Printf("  attachment %d: %s (type error: %v)\n", id, name, err)
			continue
		}
		fmt.Printf("  attachment %d: %s (type=%v)\n", id, name, typ)
	}
	return nil
}

func subjectOf(item facade.Item) (string, error) {
	entry, result, err := item.RecordEntryByType(0, pff.EntryTypeSubject, 0, recordset.MatchAnyValueType)
	if err != nil {
		return "", err
	}
	if result != recordset.ResultFound {
		return "", nil
	}
	return entry.AsUTF8String()
}
