package main_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestChecklistManagement(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ChecklistManagement Suite")
}
