// m4tool is a CLI utility that prints the matrices the experiments are built from.
package main

import (
	"errors"
	"flag"
	"fmt"
	gomath "math"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/gl-experiments/pkg/math"
)

var errUsage = errors.New("wrong number of arguments")

// command builds a matrix from its positional arguments.
type command struct {
	usage string
	nargs int
	build func(args []float64) (math.Mat4, error)
}

var commands = map[string]command{
	"identity": {
		usage: "identity",
		build: func([]float64) (math.Mat4, error) { return math.Identity(), nil },
	},
	"translate": {
		usage: "translate <x> <y> <z>",
		nargs: 3,
		build: func(a []float64) (math.Mat4, error) {
			return math.Translation(math.Vec3{X: a[0], Y: a[1], Z: a[2]}), nil
		},
	},
	"scale": {
		usage: "scale <x> <y> <z>",
		nargs: 3,
		build: func(a []float64) (math.Mat4, error) {
			return math.Scaling(math.Vec3{X: a[0], Y: a[1], Z: a[2]}), nil
		},
	},
	"ortho": {
		usage: "ortho <left> <right> <bottom> <top> <near> <far>",
		nargs: 6,
		build: func(a []float64) (math.Mat4, error) {
			return math.OrthographicFrustum(a[0], a[1], a[2], a[3], a[4], a[5]), nil
		},
	},
	"perspective": {
		usage: "perspective <fov> <aspect> <near> <far>",
		nargs: 4,
		build: func(a []float64) (math.Mat4, error) {
			return math.PerspectiveProjection(a[0], a[1], a[2], a[3]), nil
		},
	},
	"lookat": {
		usage: "lookat <cx> <cy> <cz> <tx> <ty> <tz>",
		nargs: 6,
		build: func(a []float64) (math.Mat4, error) {
			return math.LookAt(math.Vec3{X: a[0], Y: a[1], Z: a[2]}, math.Vec3{X: a[3], Y: a[4], Z: a[5]}), nil
		},
	},
	"invert": {
		usage: "invert <m00> <m01> ... <m33>",
		nargs: 16,
		build: func(a []float64) (math.Mat4, error) {
			var m math.Mat4
			for i, v := range a {
				m[i/4][i%4] = v
			}
			return m.Inverse()
		},
	},
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	name := os.Args[1]
	args := os.Args[2:]

	switch name {
	case "rotate":
		cmdRotate(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		cmd, ok := commands[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", name)
			printUsage()
			os.Exit(1)
		}
		m, err := runCommand(cmd, args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\nUsage: m4tool %s\n", err, cmd.usage)
			os.Exit(1)
		}
		fmt.Println(m)
	}
}

func printUsage() {
	fmt.Println(`m4tool - 4x4 transform matrix utility

Usage:
  m4tool <command> [arguments]

Commands:
  identity                                   Identity matrix
  rotate [-deg] <x|y|z> <angle>              Rotation about an axis
  translate <x> <y> <z>                      Translation
  scale <x> <y> <z>                          Scaling
  ortho <l> <r> <b> <t> <near> <far>         Orthographic frustum
  perspective <fov> <aspect> <near> <far>    Perspective projection (fov in radians)
  lookat <cx> <cy> <cz> <tx> <ty> <tz>       Camera-to-world matrix
  invert <m00> ... <m33>                     Inverse of a row-major matrix

Examples:
  m4tool rotate -deg z 90
  m4tool perspective 0.47 1.333 1 1000
  m4tool lookat 0 0 5 0 0 0`)
}

// runCommand parses args and builds the command's matrix.
func runCommand(cmd command, args []string) (math.Mat4, error) {
	values, err := parseFloats(args)
	if err != nil {
		return math.Mat4{}, err
	}
	if len(values) != cmd.nargs {
		return math.Mat4{}, fmt.Errorf("%w: got %d, want %d", errUsage, len(values), cmd.nargs)
	}
	return cmd.build(values)
}

func cmdRotate(args []string) {
	fs := flag.NewFlagSet("rotate", flag.ExitOnError)
	deg := fs.Bool("deg", false, "Angle is in degrees")
	fs.Parse(args)

	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: m4tool rotate [-deg] <x|y|z> <angle>")
		os.Exit(1)
	}

	m, err := rotation(fs.Arg(0), fs.Arg(1), *deg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(m)
}

// rotation returns the rotation about axis by angle.
func rotation(axis, angle string, degrees bool) (math.Mat4, error) {
	a, err := strconv.ParseFloat(angle, 64)
	if err != nil {
		return math.Mat4{}, fmt.Errorf("invalid angle %q: %w", angle, err)
	}
	if degrees {
		a = a * gomath.Pi / 180
	}

	switch strings.ToLower(axis) {
	case "x":
		return math.RotationX(a), nil
	case "y":
		return math.RotationY(a), nil
	case "z":
		return math.RotationZ(a), nil
	default:
		return math.Mat4{}, fmt.Errorf("unknown axis %q", axis)
	}
}

func parseFloats(args []string) ([]float64, error) {
	values := make([]float64, len(args))
	for i, s := range args {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		values[i] = v
	}
	return values, nil
}
