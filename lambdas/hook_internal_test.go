package lambdas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_splitFuncName(t *testing.T) {
	tests := []struct {
		full       string
		owner      string
		impl       string
		ok         bool
		synthesize bool
	}{
		{full: "strings.ToUpper", owner: "strings", impl: "ToUpper", ok: true},
		{full: "bytes.(*Buffer).String", owner: "bytes.(*Buffer)", impl: "String", ok: true},
		{full: "example.com/a/b.Names.Get", owner: "example.com/a/b.Names", impl: "Get", ok: true},
		{full: "example.com/pkg.Map[...]", owner: "example.com/pkg", impl: "Map", ok: true},
		{full: "example.com/pkg.TestX.func1", owner: "example.com/pkg", impl: "TestX.func1", ok: true, synthesize: true},
		{full: "example.com/pkg.TestX.func1.2", owner: "example.com/pkg", impl: "TestX.func1.2", ok: true, synthesize: true},
		{full: "example.com/pkg.glob..func3", owner: "example.com/pkg", impl: "glob.func3", ok: true, synthesize: true},
		{full: "example.com/pkg.run.gowrap1", owner: "example.com/pkg", impl: "run.gowrap1", ok: true, synthesize: true},
		{full: "example.com/pkg.func1", owner: "example.com/pkg", impl: "func1", ok: true},
		{full: "example.com/pkg.T.M.func1", owner: "example.com/pkg", impl: "T.M.func1", ok: true, synthesize: true},
		{full: "example.com/pkg.functional", owner: "example.com/pkg", impl: "functional", ok: true},
		{full: "example.com/pkg.Names.Get-fm", ok: false},
	}

	for _, test := range tests {
		t.Run(test.full, func(t *testing.T) {
			t.Parallel()

			owner, impl, ok := splitFuncName(test.full)
			assert.Equal(t, test.ok, ok)
			assert.Equal(t, test.owner, owner)
			assert.Equal(t, test.impl, impl)
			if ok {
				assert.Equal(t, test.synthesize, isSynthesizedName(impl))
			}
		})
	}
}
