package schema

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// VehicleFields holds the ordered list of dynamic vehicle field names read
// once at startup. It never changes for the lifetime of the process.
type VehicleFields struct {
	fields []string
}

// Load reads the first comma-separated line of the given file. Downstream
// forms and imports depend on the header list, so the caller should treat
// any error here as fatal.
func Load(path string) (*VehicleFields, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vehicle schema file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, fmt.Errorf("vehicle schema file %s is empty", path)
	}

	var fields []string
	for _, name := range strings.Split(scanner.Text(), ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			fields = append(fields, name)
		}
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("vehicle schema file %s has no field names", path)
	}

	return &VehicleFields{fields: fields}, nil
}

// Fields returns a copy of the ordered field list.
func (vf *VehicleFields) Fields() []string {
	out := make([]string, len(vf.fields))
	copy(out, vf.fields)
	return out
}

// Has reports whether name is one of the loaded field names.
func (vf *VehicleFields) Has(name string) bool {
	for _, f := range vf.fields {
		if f == name {
			return true
		}
	}
	return false
}
