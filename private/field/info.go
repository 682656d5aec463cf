package field

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/yusiwen/mapper/private/naming"
)

// used for parsing tag names
var (
	tagNames = []string{"sql", "db"}
	splitRE  = regexp.MustCompile("[ ,]+")
)

// Info contains information about a persistent field of a record type.
// Infos built by List carry the reflect field and its index; infos
// built by Declare only carry names and markers.
type Info struct {
	Field      reflect.StructField
	Index      Index
	Name       string // Go field name, or declared name
	Property   string // record property name, used in placeholders and aliases
	Column     string // column name from the struct tag, if any
	PrimaryKey bool
	JSON       bool
}

// Matches reports whether name refers to this field, either by its
// Go field name or by its property name.
func (info *Info) Matches(name string) bool {
	return name == info.Name || name == info.Property
}

func newInfo(field reflect.StructField, index Index) *Info {
	info := &Info{
		Field:    field,
		Index:    index,
		Name:     field.Name,
		Property: naming.Property(field.Name),
		Column:   columnNameFromTag(field.Tag),
	}
	info.update()
	return info
}

func (info *Info) update() {
	for _, key := range tagNames {
		str := info.Field.Tag.Get(key)
		parts := strings.SplitN(str, ",", 2)
		if len(parts) > 1 {
			opts := splitRE.Split(strings.ToLower(parts[1]), -1)
			for i, word := range opts {
				word = strings.TrimSpace(word)
				switch word {
				case "pk", "primary_key":
					info.PrimaryKey = true
				case "primary":
					if i+1 < len(opts) && opts[i+1] == "key" {
						info.PrimaryKey = true
					}
				case "json", "jsonb":
					info.JSON = true
				}
			}
		}
	}
}

// columnNameFromTag returns the column name from the field tag,
// or the empty string if none specified.
func columnNameFromTag(tags reflect.StructTag) string {
	for _, key := range tagNames {
		str := tags.Get(key)
		name := strings.TrimSpace(strings.Split(str, ",")[0])
		if name != "" {
			return name
		}
	}
	return ""
}

// Declare returns field infos for explicitly declared property names,
// in the order given. Declared fields have no reflect information.
func Declare(names ...string) []*Info {
	infos := make([]*Info, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		infos = append(infos, &Info{
			Name:     name,
			Property: name,
		})
	}
	return infos
}
