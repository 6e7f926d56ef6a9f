// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package main

import (
	"encoding/json"
	"os"
)

// Config holds every setting the CLI needs, whether supplied via flags or
// a JSON config file. Mirrors the teacher's own server/client Config
// shape (server/config.go): a flat struct with `json` tags, populated
// from flags, after which parseJSONConfig overrides each field the JSON
// file sets.
type Config struct {
	Input       string `json:"input"`
	OutputDir   string `json:"output-dir"`
	Passphrase  string `json:"passphrase"`
	Mode        string `json:"mode"`
	Erasure     bool   `json:"erasure"`
	DataShard   int    `json:"datashard"`
	ParityShard int    `json:"parityshard"`
	Obfuscate   bool   `json:"obfuscate"`
	QPPCount    int    `json:"qpp-count"`
	Recover     bool   `json:"recover"`
	Share1      string `json:"share1"`
	Share2      string `json:"share2"`
	Bundle      string `json:"bundle"`
	StatsLog    string `json:"statslog"`
}

// parseJSONConfig loads path as JSON into config, overwriting any field
// present in the file. Matches server/config.go's parseJSONConfig exactly.
func parseJSONConfig(config *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(config)
}
