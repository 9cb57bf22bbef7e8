package formatter

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usagrada/satysfi-formatter/internal/cst"
)

func comment(start, end int) Comment {
	return Comment{Text: "%", Span: cst.Span{Start: start, End: end}}
}

func TestAttachComments(t *testing.T) {
	type tc struct {
		root     func() *cst.Node
		comments []Comment
		want     *cst.Node
	}

	tests := map[string]tc{
		"no comments": {
			root: func() *cst.Node {
				return cst.New(cst.ProgramSaty, 0, 5, cst.New(cst.Var, 0, 5))
			},
			want: cst.New(cst.ProgramSaty, 0, 5, cst.New(cst.Var, 0, 5)),
		},
		"comment between children goes to the parent": {
			root: func() *cst.Node {
				return cst.New(cst.ProgramSaty, 0, 20,
					cst.New(cst.Var, 0, 5),
					cst.New(cst.Var, 10, 20))
			},
			comments: []Comment{comment(6, 8)},
			want: cst.New(cst.ProgramSaty, 0, 20,
				cst.New(cst.Var, 0, 5),
				cst.New(cst.Comment, 6, 8),
				cst.New(cst.Var, 10, 20)),
		},
		"comment goes to the deepest container": {
			root: func() *cst.Node {
				return cst.New(cst.ProgramSaty, 0, 20,
					cst.New(cst.Var, 0, 5),
					cst.New(cst.Application, 10, 20,
						cst.New(cst.Var, 10, 11),
						cst.New(cst.Var, 18, 20)))
			},
			comments: []Comment{comment(6, 8), comment(12, 17)},
			want: cst.New(cst.ProgramSaty, 0, 20,
				cst.New(cst.Var, 0, 5),
				cst.New(cst.Comment, 6, 8),
				cst.New(cst.Application, 10, 20,
					cst.New(cst.Var, 10, 11),
					cst.New(cst.Comment, 12, 17),
					cst.New(cst.Var, 18, 20))),
		},
		"several comments under one node keep source order": {
			root: func() *cst.Node {
				return cst.New(cst.Vertical, 0, 30, cst.New(cst.BlockCmd, 10, 12))
			},
			comments: []Comment{comment(0, 5), comment(5, 9), comment(20, 30)},
			want: cst.New(cst.Vertical, 0, 30,
				cst.New(cst.Comment, 0, 5),
				cst.New(cst.Comment, 5, 9),
				cst.New(cst.BlockCmd, 10, 12),
				cst.New(cst.Comment, 20, 30)),
		},
		"headers keep comments inside their entries": {
			root: func() *cst.Node {
				return cst.New(cst.ProgramSatyh, 0, 40,
					cst.New(cst.Headers, 0, 30,
						cst.New(cst.HeaderRequire, 0, 10),
						cst.New(cst.HeaderRequire, 12, 30)))
			},
			comments: []Comment{comment(20, 25)},
			want: cst.New(cst.ProgramSatyh, 0, 40,
				cst.New(cst.Headers, 0, 30,
					cst.New(cst.HeaderRequire, 0, 10),
					cst.New(cst.HeaderRequire, 12, 30),
					cst.New(cst.Comment, 20, 25))),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root := tt.root()
			before := tt.root()
			got, err := AttachComments(root, tt.comments)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("AttachComments() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(before, root); diff != "" {
				t.Errorf("AttachComments() modified its input (-before +after):\n%s", diff)
			}
		})
	}
}

func TestAttachCommentsLeftover(t *testing.T) {
	root := cst.New(cst.ProgramSaty, 0, 10, cst.New(cst.Var, 0, 3))
	_, err := AttachComments(root, []Comment{comment(4, 6), comment(40, 42)})

	var inv *InvariantError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, "attach", inv.Stage)
	assert.Equal(t, cst.Span{Start: 40, End: 42}, inv.Span)
}
