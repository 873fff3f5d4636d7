// Package registry loads the category and profile lists used to classify
// transactions. Lists live in plain text files, one entry per line.
package registry

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type Registry struct {
	mu                sync.Mutex
	incomeCategories  []string
	expenseCategories []string
	profiles          []string
}

func New(income, expense, profiles []string) *Registry {
	return &Registry{
		incomeCategories:  dedupe(income),
		expenseCategories: dedupe(expense),
		profiles:          dedupe(profiles),
	}
}

// NewFromFiles reads the lists from base/categorias_entrada.txt,
// base/categorias_gasto.txt and base/perfis.txt, falling back to a small
// built-in set when a file is missing or empty.
func NewFromFiles(base string) *Registry {
	income := readLines(filepath.Join(base, "categorias_entrada.txt"))
	expense := readLines(filepath.Join(base, "categorias_gasto.txt"))
	profiles := readLines(filepath.Join(base, "perfis.txt"))
	if len(income) == 0 {
		income = []string{"Salário", "Freelance", "Outros"}
	}
	if len(expense) == 0 {
		expense = []string{"Mercado", "Casa", "Transporte", "Lazer", "Saúde"}
	}
	if len(profiles) == 0 {
		profiles = []string{"Pessoal"}
	}
	return New(income, expense, profiles)
}

// IncomeCategories returns a copy of the income category list.
func (r *Registry) IncomeCategories() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.incomeCategories...)
}

// ExpenseCategories returns a copy of the expense category list.
func (r *Registry) ExpenseCategories() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.expenseCategories...)
}

// Profiles returns a copy of the owner profile list.
func (r *Registry) Profiles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.profiles...)
}

// HasProfile reports whether the profile exists in the registry.
func (r *Registry) HasProfile(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p == name {
			return true
		}
	}
	return false
}

func readLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return dedupe(out)
}

func dedupe(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	// Input order is preserved so the files control presentation order.
	return out
}
