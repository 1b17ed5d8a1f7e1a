package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pffcore/pffcore/internal/msgfmt"
	"github.com/pffcore/pffcore/pff"
	"github.com/pffcore/pffcore/pff/facade"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "dump-item <file> <id>",
		Short: "Dump every record entry of one item's first record set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[1], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid item id %q: %w", args[1], err)
			}
			return runDumpItem(args[0], uint32(id))
		},
	})
}

func runDumpItem(path string, id uint32) error {
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

	item := file.ItemByIdentifier(id, 0, 0, false)
	rs, err := item.RecordSet(0)
	if err != nil {
		return err
	}
	n := rs.NumberOfEntries()
	for i := 0; i < n; i++ {
		entry, err := rs.EntryByIndex(i)
		if err != nil {
			return err
		}
		entryType, _ := entry.EntryType()
		valueType, _ := entry.ValueType()
		fmt.Printf("entry_type=0x%04x value_type=0x%04x %s\n", entryType, valueType, formatValue(entry, pff.ValueType(valueType)))
	}
	return nil
}

func formatValue(entry *facade.RecordEntry, valueType pff.ValueType) string {
	switch valueType {
	case pff.ValueTypeString, pff.ValueTypeUnicodeString:
		s, err := entry.AsUTF8String()
		if err != nil {
			return fmt.Sprintf("<decode error: %v>", err)
		}
		return strconv.Quote(s)
	case pff.ValueTypeInteger16Bit:
		v, err := entry.AsInt16()
		if err != nil {
			return fmt.Sprintf("<decode error: %v>", err)
		}
		return strconv.FormatInt(int64(v), 10)
	case pff.ValueTypeInteger32Bit:
		v, err := entry.AsInt32()
		if err != nil {
			return fmt.Sprintf("<decode error: %v>", err)
		}
		return strconv.FormatInt(int64(v), 10)
	case pff.ValueTypeInteger64Bit, pff.ValueTypeCurrency:
		v, err := entry.AsInt64()
		if err != nil {
			return fmt.Sprintf("<decode error: %v>", err)
		}
		return strconv.FormatInt(v, 10)
	case pff.ValueTypeBoolean:
		v, err := entry.AsBoolean()
		if err != nil {
			return fmt.Sprintf("<decode error: %v>", err)
		}
		return strconv.FormatBool(v)
	case pff.ValueTypeFiletime:
		v, err := entry.AsFiletime()
		if err != nil {
			return fmt.Sprintf("<decode error: %v>", err)
		}
		return strconv.FormatUint(v, 10)
	default:
		data := entry.Data()
		if len(data) > 32 {
			return hex.EncodeToString(data[:32]) + "..."
		}
		return hex.EncodeToString(data)
	}
}
