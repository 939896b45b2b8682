package domain

import (
	"bufio"
	"bytes"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// SectionKey is the attribute that opens a per-namespace section in a descriptor blob.
const SectionKey = "Name"

// Descriptor is the parsed form of a unit's descriptor blob.
// The blob is a list of "Key: Value" lines. A blank line followed by
// "Name: <namespace>" starts a section whose attributes apply to that namespace only.
type Descriptor struct {
	Main     map[string]string
	Sections map[string]map[string]string
}

// NewDescriptor returns an empty Descriptor.
func NewDescriptor() *Descriptor {
	return &Descriptor{
		Main:     make(map[string]string),
		Sections: make(map[string]map[string]string),
	}
}

// ParseDescriptor parses a descriptor blob.
func ParseDescriptor(data []byte) (*Descriptor, error) {
	d := NewDescriptor()
	current := d.Main
	inGap := false

	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			inGap = true
			continue
		}

		key, value, ok := strings.Cut(text, ":")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, zerr.With(zerr.Wrap(ErrInvalidDescriptor, "parse descriptor"), "line", line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if inGap {
			inGap = false
			if key == SectionKey {
				section, exists := d.Sections[value]
				if !exists {
					section = make(map[string]string)
					d.Sections[value] = section
				}
				current = section
				continue
			}
		}
		current[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, ErrInvalidDescriptor.Error())
	}
	return d, nil
}

// Merged returns the main attributes overlaid by the section of namespace ns.
func (d *Descriptor) Merged(ns string) map[string]string {
	merged := maps.Clone(d.Main)
	if merged == nil {
		merged = make(map[string]string)
	}
	maps.Copy(merged, d.Sections[ns])
	return merged
}

// Bytes renders the descriptor with sorted keys so equal descriptors render identically.
func (d *Descriptor) Bytes() []byte {
	var buf bytes.Buffer
	writeAttrs(&buf, d.Main)
	for _, ns := range slices.Sorted(maps.Keys(d.Sections)) {
		buf.WriteString("\n")
		buf.WriteString(SectionKey + ": " + ns + "\n")
		writeAttrs(&buf, d.Sections[ns])
	}
	return buf.Bytes()
}

func writeAttrs(buf *bytes.Buffer, attrs map[string]string) {
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		buf.WriteString(k + ": " + attrs[k] + "\n")
	}
}
