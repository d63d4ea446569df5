// This file is part of fsimhost.
//
// fsimhost is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// fsimhost is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with fsimhost.  If not, see <https://www.gnu.org/licenses/>.

package manifest

import (
	"bytes"
	_ "embed"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/fsimhost/fsimhost/platform/softfpga"
	"github.com/fsimhost/fsimhost/target"
)

//go:embed default.yaml
var defaultManifest []byte

// Component describes a single bridge driver or FPGA model. Which fields are
// meaningful depends on the Type field.
type Component struct {
	Type string `yaml:"type"`

	// uart
	ID     int    `yaml:"id"`
	Output string `yaml:"output"`
	Input  string `yaml:"input"`

	// tohost and assertions
	Register string   `yaml:"register"`
	Messages []string `yaml:"messages"`

	// fased
	Channel string `yaml:"channel"`
	Suffix  string `yaml:"suffix"`
}

// Manifest is the decoded form of a manifest file.
type Manifest struct {
	Platform softfpga.Config     `yaml:"platform"`
	Target   target.ScriptConfig `yaml:"target"`
	Drivers  []Component         `yaml:"drivers"`
	Models   []Component         `yaml:"models"`
}

// Load decodes a manifest. Unknown fields are an error.
func Load(r io.Reader) (*Manifest, error) {
	m := &Manifest{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil {
		if err == io.EOF {
			return m, nil
		}
		return nil, errors.Wrap(err, "manifest: decode")
	}
	return m, nil
}

// LoadFile decodes the named manifest file.
func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest: %s", path)
	}
	defer f.Close()

	m, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest: %s", path)
	}
	return m, nil
}

// Default returns the built-in demonstration manifest.
func Default() (*Manifest, error) {
	return Load(bytes.NewReader(defaultManifest))
}
