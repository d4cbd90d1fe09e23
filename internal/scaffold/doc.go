// Package scaffold writes starter files for a Maizzle project: layouts,
// templates, environment configs and the Tailwind CSS config, rendered from
// templates embedded in the binary. It also creates new projects by cloning a
// starter repository.
package scaffold
