package engine

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/grant-verdict/internal/augment"
	"github.com/sells-group/grant-verdict/internal/model"
)

type mockAugmenter struct {
	mock.Mock
}

func (m *mockAugmenter) Propose(ctx context.Context, in augment.Context) (*model.Proposal, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Proposal), args.Error(1)
}

type mockExplainer struct {
	mock.Mock
}

func (m *mockExplainer) ExplainGap(ctx context.Context, in augment.GapInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}
