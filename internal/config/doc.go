// Package config provides configuration structures and utilities for bsdetector.
// It defines the options for fetching articles, loading the publisher
// blacklist, persisting votes and analyses, and report generation preferences.
package config
