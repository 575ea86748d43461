package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	apperr "github.com/menumanagerpro/menumanager/pkg/errors"
)

type table struct {
	w *tabwriter.Writer
}

func newTable(out io.Writer, headers ...string) *table {
	t := &table{w: tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)}
	t.row(headers...)
	return t
}

func (t *table) row(cols ...string) {
	fmt.Fprintln(t.w, strings.Join(cols, "\t"))
}

func (t *table) flush() error { return t.w.Flush() }

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func id(v uint) string { return strconv.FormatUint(uint64(v), 10) }

// parseID reads a positive numeric id argument.
func parseID(arg string) (uint, error) {
	n, err := strconv.ParseUint(arg, 10, 0)
	if err != nil || n == 0 {
		return 0, apperr.New(apperr.CodeValidation, fmt.Sprintf("invalid id %q", arg)).WithField("id")
	}
	return uint(n), nil
}

// parsePairs turns repeated "name=value" flags into a map. A later pair
// overrides an earlier one with the same name.
func parsePairs(flag string, pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, apperr.New(apperr.CodeValidation, fmt.Sprintf("--%s wants name=value, got %q", flag, p)).WithField(flag)
		}
		out[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return out, nil
}

// parseSelections turns repeated "Section=Dish" flags into section → dishes,
// keeping dishes in the order given.
func parseSelections(pairs []string) (map[string][]string, error) {
	out := map[string][]string{}
	for _, p := range pairs {
		section, dish, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(section) == "" || strings.TrimSpace(dish) == "" {
			return nil, apperr.New(apperr.CodeValidation, fmt.Sprintf("--dish wants Section=Dish, got %q", p)).WithField("dish")
		}
		section = strings.TrimSpace(section)
		out[section] = append(out[section], strings.TrimSpace(dish))
	}
	return out, nil
}

func formatPairs[V ~string](m map[string]V) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+string(m[k]))
	}
	return strings.Join(parts, ", ")
}
