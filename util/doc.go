// Package util holds generic slice and map helpers and byte size parsing.
package util
