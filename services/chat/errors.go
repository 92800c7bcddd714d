package chat

import "errors"

var (
	ErrForbidden        = errors.New("not allowed")
	ErrEditWindowClosed = errors.New("edit window has closed")
	ErrMessageDeleted   = errors.New("message has been deleted")
	ErrNotGroupMember   = errors.New("sender is not a member of the group")
	ErrEmptyMessage     = errors.New("message has no content")
	ErrInvalidTarget    = errors.New("message needs exactly one of recipientId or groupId")
	ErrInvalidGroup     = errors.New("group needs a name and at least one other member")
)
