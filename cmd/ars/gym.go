//go:build gym

package main

// Gym environments require a Python installation with OpenAI Gym, so
// they are only available when building with the gym tag
import _ "github.com/samuelfneumann/goars/environment/gym"
