package scoring

import "testing"

func intPtr(v int) *int { return &v }

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name          string
		priorAttempts int
		maxAttempts   *int
		wantErr       error
	}{
		{name: "unlimited always allows", priorAttempts: 100, maxAttempts: nil, wantErr: nil},
		{name: "under the limit", priorAttempts: 1, maxAttempts: intPtr(2), wantErr: nil},
		{name: "first attempt", priorAttempts: 0, maxAttempts: intPtr(1), wantErr: nil},
		{name: "at the limit", priorAttempts: 2, maxAttempts: intPtr(2), wantErr: ErrAttemptLimitExceeded},
		{name: "over the limit", priorAttempts: 5, maxAttempts: intPtr(2), wantErr: ErrAttemptLimitExceeded},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := Authorize(tc.priorAttempts, tc.maxAttempts); err != tc.wantErr {
				t.Errorf("Authorize(%d, %v) = %v, want %v", tc.priorAttempts, tc.maxAttempts, err, tc.wantErr)
			}
		})
	}
}
