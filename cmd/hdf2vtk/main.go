/*
 * main.go, part of gopost
 *
 * Copyright 2023 Karim Mahrez <kmahrez_at_pm-dot-me>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License  as published by
 * the Free Software Foundation; either version 2.1 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston,
 * MA 02110-1301, USA.
 */

// Command hdf2vtk converts a solver HDF5 snapshot into a rectilinear grid
// file. It expects the usual case layout: HDF/<name>.h5 holds the datasets,
// GRID/x, GRID/y and GRID/z hold the axis coordinates (one value per line),
// and VTK/<name>.vtr is written. Every root-level dataset whose size matches
// the grid becomes a scalar point field; the directories can be changed with
// a small TOML config.
package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	post "github.com/kmahrez/gopost"
	"github.com/kmahrez/gopost/hdf"
	"github.com/kmahrez/gopost/vtk"
)

type config struct {
	HDFDir  string `toml:"hdf_dir"`
	GridDir string `toml:"grid_dir"`
	VTKDir  string `toml:"vtk_dir"`
}

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "hdf2vtk <name>",
	Short: "convert HDF/<name>.h5 plus GRID/{x,y,z} into VTK/<name>.vtr",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return run(args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "TOML config file (default hdf2vtk.toml if present)")
}

func loadConfig() (config, error) {
	cfg := config{HDFDir: "HDF", GridDir: "GRID", VTKDir: "VTK"}
	name := cfgFile
	if name == "" {
		if _, err := os.Stat("hdf2vtk.toml"); err != nil {
			return cfg, nil
		}
		name = "hdf2vtk.toml"
	}
	if _, err := toml.DecodeFile(name, &cfg); err != nil {
		return cfg, err
	}
	log.WithField("config", name).Info("loaded configuration")
	return cfg, nil
}

// readAxis reads one grid axis file: whitespace-separated floats, normally
// one per line.
func readAxis(name string) ([]float64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var axis []float64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		for _, field := range strings.Fields(sc.Text()) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, err
			}
			axis = append(axis, v)
		}
	}
	return axis, sc.Err()
}

func run(name string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	x, err := readAxis(filepath.Join(cfg.GridDir, "x"))
	if err != nil {
		return err
	}
	y, err := readAxis(filepath.Join(cfg.GridDir, "y"))
	if err != nil {
		return err
	}
	z, err := readAxis(filepath.Join(cfg.GridDir, "z"))
	if err != nil {
		return err
	}
	npoints := len(x) * len(y) * len(z)
	log.WithFields(log.Fields{"nx": len(x), "ny": len(y), "nz": len(z)}).Info("grid loaded")

	h5, err := hdf.Open(filepath.Join(cfg.HDFDir, name+".h5"))
	if err != nil {
		return err
	}
	defer h5.Close()

	fields := post.NewFields()
	for _, ds := range h5.Datasets() {
		arr, err := h5.Get(ds)
		if err != nil {
			return err
		}
		if arr.Len() != npoints {
			log.WithFields(log.Fields{"dataset": ds, "size": arr.Len(), "grid": npoints}).
				Warn("dataset does not cover the grid, skipping")
			continue
		}
		flat, err := arr.Reshape(post.Shape{1, arr.Len()})
		if err != nil {
			return err
		}
		if err := fields.Add(ds, 1, flat); err != nil {
			return err
		}
	}
	if fields.Len() == 0 {
		log.Warn("no usable datasets, writing bare grid")
	}

	out := filepath.Join(cfg.VTKDir, name+".vtr")
	if err := os.MkdirAll(cfg.VTKDir, 0o755); err != nil {
		return err
	}
	if err := vtk.WriteRectilinear(out, x, y, z, fields); err != nil {
		return err
	}
	log.WithFields(log.Fields{"file": out, "fields": fields.Len()}).Info("wrote grid file")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
