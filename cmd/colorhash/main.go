// Package main provides a command-line tool that prints the color derived for each input.
//
// Usage:
//
//	colorhash alice bob
//	git log --format=%an | sort -u | colorhash -lightness 0.5-0.6
//	colorhash -kind tag "Science Fiction"
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/listenupapp/colorhash/internal/color"
	"github.com/listenupapp/colorhash/internal/config"
)

const swatch = "██"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run parses args and prints one line per input. Inputs come from args, or
// from stdin one per line when no positional args are given.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("colorhash", flag.ContinueOnError)
	fs.SetOutput(stderr)

	saturation := fs.String("saturation", "", "Saturation range min-max (default: 0.35-0.65)")
	lightness := fs.String("lightness", "", "Lightness range min-max (default: 0.35-0.65)")
	hue := fs.String("hue", "", "Comma separated hue ranges in degrees, e.g. 30-90,180-210")
	kind := fs.String("kind", "raw", "Key kind: raw, user or tag")
	noColor := fs.Bool("no-color", false, "Do not print an ANSI color swatch")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	deriver, err := buildDeriver(*saturation, *lightness, *hue, *kind)
	if err != nil {
		fmt.Fprintf(stderr, "colorhash: %v\n", err)
		return 2
	}

	emit := func(input string) error {
		key := input
		if *kind == "tag" {
			key = color.TagKey(input)
		}
		hsl := deriver.HashString(key)
		rgb, err := hsl.RGB()
		if err != nil {
			return err
		}

		var b strings.Builder
		if !*noColor {
			b.WriteString(rgb.ANSI() + swatch + "\033[0m ")
		}
		fmt.Fprintf(&b, "%s\t%s\t%s\n", input, rgb.Hex(), hsl.CSS())
		_, err = io.WriteString(stdout, b.String())
		return err
	}

	if fs.NArg() > 0 {
		for _, input := range fs.Args() {
			if err := emit(input); err != nil {
				fmt.Fprintf(stderr, "colorhash: %v\n", err)
				return 1
			}
		}
		return 0
	}

	// Lines have no length limit, so read with a Reader rather than a Scanner.
	reader := bufio.NewReader(stdin)
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			fmt.Fprintf(stderr, "colorhash: reading stdin: %v\n", readErr)
			return 1
		}
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			if err := emit(line); err != nil {
				fmt.Fprintf(stderr, "colorhash: %v\n", err)
				return 1
			}
		}
		if readErr != nil {
			return 0
		}
	}
}

func buildDeriver(saturation, lightness, hue, kind string) (*color.Deriver, error) {
	switch kind {
	case "raw", "tag":
	case "user":
		if saturation != "" || lightness != "" || hue != "" {
			return nil, errors.New("-kind user uses the avatar palette and takes no range flags")
		}
		return color.Avatar(), nil
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}

	s, l := color.DefaultSaturation, color.DefaultLightness
	var err error
	if saturation != "" {
		if s, err = config.ParseRange(saturation); err != nil {
			return nil, fmt.Errorf("saturation: %w", err)
		}
	}
	if lightness != "" {
		if l, err = config.ParseRange(lightness); err != nil {
			return nil, fmt.Errorf("lightness: %w", err)
		}
	}
	hues, err := config.ParseHueRanges(hue)
	if err != nil {
		return nil, fmt.Errorf("hue: %w", err)
	}

	d, err := color.WithRanges(s, l)
	if err != nil {
		return nil, err
	}
	return d.WithHueRanges(hues...)
}
