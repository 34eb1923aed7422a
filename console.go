package main

import (
	"errors"
	"strconv"
	"strings"
)

type console struct {
	v *viewer
}

var errArgumentNumber = errors.New("invalid number of arguments")
var errInvalidCommand = errors.New("invalid command")
var errModelNotLoaded = errors.New("model is not loaded")

var consoleCommands = map[string]func(v *viewer, args []float32) ([][]float32, error){
	"clock": func(v *viewer, args []float32) ([][]float32, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		return [][]float32{{float32(v.time)}}, nil
	},
	"yaw": func(v *viewer, args []float32) ([][]float32, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		return [][]float32{{v.yaw()}}, nil
	},
	"polar": func(v *viewer, args []float32) ([][]float32, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		c := v.controls
		return [][]float32{{
			float32(c.polarAngle()), float32(c.minPolarAngle), float32(c.maxPolarAngle),
			float32(c.azimuthalAngle()),
		}}, nil
	},
	"size": func(v *viewer, args []float32) ([][]float32, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		return [][]float32{{
			float32(v.width), float32(v.height), float32(v.cappedPixelRatio()),
		}}, nil
	},
	"camera": func(v *viewer, args []float32) ([][]float32, error) {
		switch len(args) {
		case 0:
		case 3:
			v.camera.position = [3]float32{args[0], args[1], args[2]}
		default:
			return nil, errArgumentNumber
		}
		p := v.camera.position
		return [][]float32{{p[0], p[1], p[2]}}, nil
	},
	"model": func(v *viewer, args []float32) ([][]float32, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		if v.model == nil {
			return nil, errModelNotLoaded
		}
		b, err := boxFromObject(v.model)
		if err != nil {
			return nil, err
		}
		return [][]float32{
			{b.min[0], b.min[1], b.min[2]},
			{b.max[0], b.max[1], b.max[2]},
		}, nil
	},
	"rotation_speed": func(v *viewer, args []float32) ([][]float32, error) {
		switch len(args) {
		case 0:
		case 1:
			v.rotationSpeed = args[0]
		default:
			return nil, errArgumentNumber
		}
		return [][]float32{{v.rotationSpeed}}, nil
	},
}

func (c *console) Run(line string) (string, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return "", nil
	}
	fn, ok := consoleCommands[args[0]]
	if !ok {
		return "", errInvalidCommand
	}
	var argsFloat []float32
	for i := 1; i < len(args); i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return "", err
		}
		argsFloat = append(argsFloat, float32(f))
	}
	res, err := fn(c.v, argsFloat)
	if err != nil {
		return "", err
	}
	var resStr []string
	for _, vv := range res {
		var resLine []string
		for _, v := range vv {
			resLine = append(resLine, strconv.FormatFloat(float64(v), 'f', 3, 32))
		}
		resStr = append(resStr, strings.Join(resLine, " "))
	}
	return strings.Join(resStr, "\n"), nil
}
