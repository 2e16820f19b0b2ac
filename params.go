package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sitetest/browser-test-harness/framework/btest"
)

type commandParams struct {
	baseURL        string
	environmentTag string
	browser        string
	headed         bool
	slowMo         time.Duration
	filters        btest.RegexFilters
	debug          bool
	debugAll       bool
	jUnitFile      string
	artifactDir    string
	s3Bucket       string
	s3Prefix       string
	installFirst   bool
	skipFile       string
	recordFailures string
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.baseURL, "url", "", "base URL of the site under test (default: start the bundled demo site)")
	fs.StringVar(&c.environmentTag, "env", "", "environment tag for test titles (development, qa, staging, production)")
	fs.StringVar(&c.browser, "browser", "", "browser engine to launch: chromium, firefox, or webkit")
	fs.BoolVar(&c.headed, "headed", false, "run the browser with a visible window")
	fs.DurationVar(&c.slowMo, "slowmo", 0, "delay between browser operations, for watching headed runs")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.StringVar(&c.jUnitFile, "junit", "", "write JUnit XML output to the specified path")
	fs.StringVar(&c.artifactDir, "artifacts", "", "local directory for screenshots and reports")
	fs.StringVar(&c.s3Bucket, "s3-bucket", "", "S3 bucket to mirror run artifacts to")
	fs.StringVar(&c.s3Prefix, "s3-prefix", "", "key prefix inside the S3 bucket")
	fs.BoolVar(&c.installFirst, "install", false, "download the browser binaries before running")
	fs.StringVar(&c.skipFile, "skip-file", "", "file with test names to suppress, one per line")
	fs.StringVar(&c.recordFailures, "record-failures", "", "write the names of failed tests to the specified path")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	return true
}
