package config

import (
	"fmt"
	"strings"
)

// RenderDefaultTOML renders a TOML config with defaults from GetConfigOptions.
func RenderDefaultTOML() string {
	var b strings.Builder
	b.WriteString("# mdsafe configuration (TOML)\n\n")

	sections := make(map[string][]ConfigOption)
	sectionOrder := make([]string, 0)

	for _, o := range GetConfigOptions() {
		parts := strings.SplitN(o.Key, ".", 2)
		if len(parts) != 2 {
			writeTOMLOption(&b, o.Key, o.Default, o.Comment)
			continue
		}
		section := parts[0]
		if _, ok := sections[section]; !ok {
			sectionOrder = append(sectionOrder, section)
		}
		sections[section] = append(sections[section], ConfigOption{
			Key:     parts[1],
			Default: o.Default,
			Comment: o.Comment,
		})
	}

	for _, section := range sectionOrder {
		b.WriteString("[" + section + "]\n")
		for _, o := range sections[section] {
			writeTOMLOption(&b, o.Key, o.Default, o.Comment)
		}
	}

	return b.String()
}

func writeTOMLOption(b *strings.Builder, key string, value any, comment string) {
	if comment != "" {
		b.WriteString("# " + comment + "\n")
	}
	switch v := value.(type) {
	case string:
		b.WriteString(fmt.Sprintf("%s = %q\n\n", key, v))
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		b.WriteString(fmt.Sprintf("%s = [%s]\n\n", key, strings.Join(quoted, ", ")))
	default:
		b.WriteString(fmt.Sprintf("%s = %v\n\n", key, v))
	}
}
