// Package mocks provides shared hand-written mocks for tests.
//
// Mocks use function fields so a test overrides only the behaviour it cares
// about:
//
//	svc := &mocks.MockTaskService{
//	    RunTaskFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
//	        return nil, service.ErrTaskNotFound
//	    },
//	}
package mocks
