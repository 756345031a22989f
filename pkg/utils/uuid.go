package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera um identificador curto com o alfabeto alfanumérico
func GenerateID(size int) (string, error) {
	return gonanoid.Generate(characters, size)
}
