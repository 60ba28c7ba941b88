// Package source selects where a recipe comes from. Three strategies
// run in a fixed priority order:
//
//  1. webpage: a recipe link found in the description, scraped for
//     Schema.org Recipe JSON-LD
//  2. description: a recipe written directly in the description
//  3. ai: extraction from the transcript by the local model
//
// The first two degrade silently: any failure skips to the next tier.
// The AI tier is the floor, so its failure is the extraction's failure.
// Raw ingredient lines from every tier pass through the confidence gate
// before entering a recipe. After a tier 1 or 2 success, tips mined
// from the transcript are attached; tips never change the selected
// source and never fail the resolution.
package source
