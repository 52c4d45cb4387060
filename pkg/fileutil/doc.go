// Package fileutil provides bounded reads and atomic writes for the files the
// validator consumes (answer files) and produces (reports).
package fileutil
