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
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/secvis/imgshare/obfuscate"
	"github.com/secvis/imgshare/pipeline"
)

// VERSION is injected by build flags, matching the teacher's own
// client/main.go and server/main.go convention.
var VERSION = "SELFBUILD"

func main() {
	if VERSION == "SELFBUILD" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	app := cli.NewApp()
	app.Name = "imgshare"
	app.Usage = "visual secret-sharing and tamper-recovery engine for 256x256 images"
	app.Version = VERSION
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "c", Usage: "load settings from a JSON config file"},
		cli.StringFlag{Name: "mode", Value: "encrypt", Usage: "encrypt or decrypt"},
		cli.StringFlag{Name: "input", Usage: "input PNG (encrypt) or wire bundle (decrypt)"},
		cli.StringFlag{Name: "output-dir", Value: ".", Usage: "directory to write results into"},
		cli.StringFlag{Name: "passphrase", Usage: "passphrase for optional share obfuscation"},
		cli.BoolFlag{Name: "obfuscate", Usage: "wrap the wire bundle in a Quantum Permutation Pad"},
		cli.IntFlag{Name: "qpp-count", Value: obfuscate.DefaultPads, Usage: "QPP pad count, prefer a prime"},
		cli.StringFlag{Name: "statslog", Usage: "append per-run timing to this CSV file"},
		cli.BoolFlag{Name: "erasure", Usage: "on encrypt, write an out-of-band erasure-coded recovery file alongside the bundle"},
		cli.IntFlag{Name: "datashard", Value: 8, Usage: "Reed-Solomon data shard count for -erasure"},
		cli.IntFlag{Name: "parityshard", Value: 4, Usage: "Reed-Solomon parity shard count for -erasure"},
		cli.BoolFlag{Name: "recover", Usage: "repair the bundle's weight maps from the recovery file before decrypting"},
	}
	app.Action = run

	checkError(app.Run(os.Args))
}

func run(c *cli.Context) error {
	config := Config{
		Input:       c.String("input"),
		OutputDir:   c.String("output-dir"),
		Passphrase:  c.String("passphrase"),
		Mode:        c.String("mode"),
		Obfuscate:   c.Bool("obfuscate"),
		QPPCount:    c.Int("qpp-count"),
		StatsLog:    c.String("statslog"),
		Erasure:     c.Bool("erasure"),
		DataShard:   c.Int("datashard"),
		ParityShard: c.Int("parityshard"),
		Recover:     c.Bool("recover"),
	}
	if path := c.String("c"); path != "" {
		if err := parseJSONConfig(&config, path); err != nil {
			return err
		}
	}

	switch config.Mode {
	case "encrypt":
		return runEncrypt(&config)
	case "decrypt":
		return runDecrypt(&config)
	default:
		log.Fatalf("imgshare: unknown mode %q, want encrypt or decrypt", config.Mode)
		return nil
	}
}

func runEncrypt(config *Config) error {
	f, err := os.Open(config.Input)
	if err != nil {
		return err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return err
	}

	bundle, err := pipeline.EncryptImageWithStats(img, config.StatsLog)
	if err != nil {
		return err
	}

	if config.Erasure {
		rb, err := pipeline.ProtectRecovery(bundle, config.DataShard, config.ParityShard)
		if err != nil {
			return err
		}
		rdata, err := pipeline.MarshalRecoveryBundle(rb)
		if err != nil {
			return err
		}
		rpath := filepath.Join(config.OutputDir, "bundle.recovery")
		if err := os.WriteFile(rpath, rdata, 0o644); err != nil {
			return err
		}
		log.Printf("imgshare: wrote %s (%d bytes)", rpath, len(rdata))
	}

	data, err := pipeline.MarshalBundle(bundle)
	if err != nil {
		return err
	}

	if config.Obfuscate {
		data, err = obfuscate.Pad(data, config.Passphrase, config.QPPCount)
		if err != nil {
			return err
		}
	}

	out := filepath.Join(config.OutputDir, "bundle.imgshare")
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	log.Printf("imgshare: wrote %s (%d bytes)", out, len(data))
	return nil
}

func runDecrypt(config *Config) error {
	data, err := os.ReadFile(config.Input)
	if err != nil {
		return err
	}

	if config.Obfuscate {
		data, err = obfuscate.Unpad(data, config.Passphrase, config.QPPCount)
		if err != nil {
			return err
		}
	}

	bundle, err := pipeline.UnmarshalBundle(data)
	if err != nil {
		return err
	}

	if config.Recover {
		rpath := filepath.Join(filepath.Dir(config.Input), "bundle.recovery")
		rdata, err := os.ReadFile(rpath)
		if err != nil {
			return err
		}
		rb, err := pipeline.UnmarshalRecoveryBundle(rdata)
		if err != nil {
			return err
		}
		if err := pipeline.RestoreRecovery(bundle, rb); err != nil {
			return err
		}
		log.Printf("imgshare: repaired weight maps from %s", rpath)
	}

	img, err := pipeline.DecryptImage(bundle)
	if err != nil {
		return err
	}

	out := filepath.Join(config.OutputDir, "recovered.png")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return err
	}
	log.Printf("imgshare: wrote %s", out)
	return nil
}

func checkError(err error) {
	if err != nil {
		log.Printf("%+v\n", err)
		os.Exit(-1)
	}
}
