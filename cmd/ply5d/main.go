/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/avli/ply5d/config"
	"github.com/avli/ply5d/eval"
	"github.com/avli/ply5d/importers/json"
	"github.com/avli/ply5d/logging"
	"github.com/avli/ply5d/search"
)

var out = message.NewPrinter(language.German)

func main() {
	configFile := flag.String("config", "./config/config.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "", "standard log level\n(critical|error|warning|notice|info|debug)")
	input := flag.String("input", "", "path to a JSON game position (required)")
	moveTime := flag.Int("movetime", 5000, "search time budget in milliseconds")
	cpuProfile := flag.Bool("profile", false, "write a pprof CPU profile of the search to ./cpu.pprof")
	flag.Parse()

	if *cpuProfile {
		// go tool pprof -http :8080 ./cpu.pprof
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	// this needs to be set before config.Setup() is called, otherwise the
	// default will be used.
	config.ConfFile = *configFile
	config.Setup()

	if lvl, found := config.LogLevels[*logLvl]; found {
		config.LogLevel = lvl
	}

	// resetting log level on the standard log - required as most packages
	// include the standard logger as a global var and therefore even
	// before main() is called. These loggers start at the default log
	// level and must be reset to the actual level required.
	log := logging.GetLog()

	if *input == "" {
		out.Println("missing -input: a JSON game position is required")
		flag.Usage()
		os.Exit(2)
	}

	raw, err := ioutil.ReadFile(*input)
	if err != nil {
		out.Printf("could not read %s: %v\n", *input, err)
		os.Exit(1)
	}

	g, err := json.Parse(raw)
	if err != nil {
		out.Printf("could not parse %s: %v\n", *input, err)
		os.Exit(1)
	}
	log.Infof("loaded position with %d boards, active player white=%t", len(g.Boards()), g.Info().ActivePlayer)

	opts := search.DefaultOptions()
	opts.MaxDuration = time.Duration(*moveTime) * time.Millisecond

	best, score, found := search.IddfsBlSchedule(g, opts, eval.FromConfig())
	if !found {
		out.Println("no legal move found")
		os.Exit(1)
	}

	chosen := best.Path[len(best.Path)-1]
	out.Printf("%s (score %.2f)\n", chosen.String(), score)

	result := best.PG.Flatten()
	for _, b := range result.Boards() {
		fmt.Println(b.String())
	}
}
