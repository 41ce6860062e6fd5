// Package framework holds the static catalog of reasoning frameworks that
// shape the generation prompt.
//
// The catalog is read-only. Unknown identifiers resolve to the default entry,
// which is also the initial selection in the interactive application:
//
//	fw := framework.Resolve(cfg.Engine.DefaultFramework)
//	prompt := generator.BuildPrompt(keyword, fw)
package framework
