// Package testutil provides shared test helpers used across integration
// and unit test packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFiles writes files, keyed by slash-separated paths relative to root,
// creating parent directories as needed.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// Project writes files into a fresh temporary directory and returns it.
// The directory is resolved through symlinks so paths compare equal to
// what a resolver reports.
func Project(t *testing.T, files map[string]string) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	WriteFiles(t, root, files)
	return root
}

// AliasProject is a small project with one wildcard alias, one exact alias
// and a declaration-only alias.
func AliasProject(t *testing.T) string {
	t.Helper()
	return Project(t, map[string]string{
		"tsconfig.json": `{
  "compilerOptions": {
    "baseUrl": ".",
    "paths": {
      // application modules
      "@app/*": ["./src/app/*"],
      "@lib": ["./src/lib/index.ts"],
      "@types/*": ["./types/*.d.ts"],
    }
  }
}`,
		"src/main.ts":      "import { greet } from \"@app/utils\";\nimport { version } from \"@lib\";\nconsole.log(greet(version));\n",
		"src/app/utils.ts": "export function greet(name: string): string { return `hello ${name}`; }\n",
		"src/lib/index.ts": "export const version = \"1.0.0\";\n",
		"types/env.d.ts":   "declare const env: string;\n",
	})
}
