// Command clodbuild drives the clusterlod builder from the command
// line, generating a procedural demo mesh (or, in the future, loading
// one) and reporting the resulting cluster DAG.
package main

import "github.com/nanite-lod/clusterlod/cmd/clodbuild/cmd"

func main() {
	cmd.Execute()
}
