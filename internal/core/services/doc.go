// Package services implements the core behaviour behind the driving
// ports: the search engine, single-session retrieval and archive stats.
// Services hold the read-only archive for one invocation and share no
// mutable state between invocations.
package services
