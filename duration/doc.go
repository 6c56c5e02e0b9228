// Package duration converts between the compact duration grammar used by
// timer definitions and whole seconds.
//
// The grammar is [[[D:]H:]M:]S with an optional leading minus sign:
//
//	duration.Parse("1:10:00")  // 4200
//	duration.Parse("-30")      // -30
//	duration.Parse("")         // 0
//
// Format renders seconds as a phrase for display ("1 hour, 10 minutes").
// It drops precision below its largest unit and must not be fed back into
// Parse. Canonical produces a lossless "D:H:M:S" string instead.
package duration
