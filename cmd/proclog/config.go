package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

type config struct {
	dir      string
	interval time.Duration
}

// parseConfig resolves the log folder and interval, either from the two
// positional arguments or by prompting on the given reader. The interval must
// be a positive whole number of minutes; anything else aborts startup.
func parseConfig(args []string, in io.Reader, out io.Writer) (config, error) {
	var dir, rawInterval string

	if len(args) >= 2 {
		dir, rawInterval = args[0], args[1]
	} else {
		scanner := bufio.NewScanner(in)

		fmt.Fprintln(out, "Enter folder name to store logs:")
		dir = readLine(scanner)

		fmt.Fprintln(out, "Enter time interval (in minutes):")
		rawInterval = readLine(scanner)
	}

	dir = strings.TrimSpace(dir)
	if dir == "" {
		return config{}, fmt.Errorf("folder name must not be empty")
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(rawInterval))
	if err != nil {
		return config{}, fmt.Errorf("invalid interval %q: expected a whole number of minutes", rawInterval)
	}
	if minutes <= 0 {
		return config{}, fmt.Errorf("invalid interval %d: must be a positive number of minutes", minutes)
	}

	return config{
		dir:      dir,
		interval: time.Duration(minutes) * time.Minute,
	}, nil
}

func readLine(scanner *bufio.Scanner) string {
	if scanner.Scan() {
		return scanner.Text()
	}
	return ""
}
