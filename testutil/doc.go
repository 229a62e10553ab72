// Package testutil provides seeded sample-dataset generation and format
// encoders shared by package tests and the CLI generator. Generated spectra
// are Gaussian peak sets plus noise, with sample/concentration/operator
// metadata, so filtering and coloring have realistic categorical columns to
// work with.
package testutil
