//go:build cgo

package pam

/*
#cgo LDFLAGS: -lpam
#include <security/pam_appl.h>
#include <stdlib.h>

// refuse_conv answers every prompt with a conversation error. Transactions
// opened here never interact with a user.
static int refuse_conv(int num_msg, const struct pam_message **msg,
                       struct pam_response **resp, void *appdata_ptr) {
    (void)num_msg;
    (void)msg;
    (void)appdata_ptr;
    *resp = NULL;
    return PAM_CONV_ERR;
}

static const struct pam_conv refuse_conversation = { refuse_conv, NULL };

static int start_transaction(const char *service, const char *user, pam_handle_t **pamh) {
    return pam_start(service, user, &refuse_conversation, pamh);
}
*/
import "C"

import (
	"strings"
	"unsafe"

	"github.com/isseis/go-pam-env/internal/pamenv"
)

// Handle is a borrowed pam_handle_t. It is owned by whoever created the PAM
// transaction, typically libpam itself when the caller is a PAM module.
type Handle struct {
	pamh *C.pam_handle_t
}

// FromHandle wraps a pam_handle_t* received from libpam. The pointer must stay
// valid for as long as the Handle is used.
func FromHandle(pamh unsafe.Pointer) *Handle {
	return &Handle{pamh: (*C.pam_handle_t)(pamh)}
}

// EnvList implements pamenv.Session.
func (h *Handle) EnvList() pamenv.NativeList {
	if h == nil || h.pamh == nil {
		return nil
	}
	return newEnvArray(C.pam_getenvlist(h.pamh))
}

// Environment returns a snapshot of the handle's environment list.
func (h *Handle) Environment(opts ...pamenv.Option) (*pamenv.EnvList, bool) {
	return pamenv.NewFetcher(DefaultReleaser(), opts...).Fetch(h)
}

func (h *Handle) errorFor(op string, code C.int) error {
	if code == C.PAM_SUCCESS {
		return nil
	}
	return &Error{
		Op:   op,
		Code: int(code),
		Msg:  C.GoString(C.pam_strerror(h.pamh, code)),
	}
}

// Transaction is a PAM transaction started by this process.
// A Transaction is not safe for concurrent use.
type Transaction struct {
	handle *Handle
	status C.int
	ended  bool
}

// Start opens a PAM transaction for service and user. The transaction uses a
// conversation that refuses all prompts.
func Start(service, user string) (*Transaction, error) {
	if service == "" {
		return nil, ErrEmptyService
	}

	cService := C.CString(service)
	defer C.free(unsafe.Pointer(cService))

	var cUser *C.char
	if user != "" {
		cUser = C.CString(user)
		defer C.free(unsafe.Pointer(cUser))
	}

	var pamh *C.pam_handle_t
	code := C.start_transaction(cService, cUser, &pamh)
	if code != C.PAM_SUCCESS {
		err := &Error{Op: "pam_start", Code: int(code), Msg: C.GoString(C.pam_strerror(pamh, code))}
		if pamh != nil {
			C.pam_end(pamh, code)
		}
		return nil, err
	}

	return &Transaction{handle: &Handle{pamh: pamh}, status: C.PAM_SUCCESS}, nil
}

// End closes the transaction. Calling End more than once is a no-op.
func (t *Transaction) End() error {
	if t.ended {
		return nil
	}
	t.ended = true
	code := C.pam_end(t.handle.pamh, t.status)
	t.handle.pamh = nil
	if code != C.PAM_SUCCESS {
		// The handle is freed by now; pam_strerror accepts NULL.
		return t.handle.errorFor("pam_end", code)
	}
	return nil
}

func (t *Transaction) record(op string, code C.int) error {
	t.status = code
	return t.handle.errorFor(op, code)
}

// PutEnv sets name to value in the transaction's environment list.
func (t *Transaction) PutEnv(name, value string) error {
	if t.ended {
		return ErrTransactionEnded
	}
	if name == "" || strings.Contains(name, "=") {
		return ErrInvalidName
	}

	entry := C.CString(name + "=" + value)
	defer C.free(unsafe.Pointer(entry))

	return t.record("pam_putenv", C.pam_putenv(t.handle.pamh, entry))
}

// GetEnv returns the value of name in the transaction's environment list.
func (t *Transaction) GetEnv(name string) (string, bool) {
	if t.ended {
		return "", false
	}
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	v := C.pam_getenv(t.handle.pamh, cName)
	if v == nil {
		return "", false
	}
	return C.GoString(v), true
}

// SetCred calls pam_setcred with the given operation.
func (t *Transaction) SetCred(flag CredFlag) error {
	if t.ended {
		return ErrTransactionEnded
	}
	var cFlag C.int
	switch flag {
	case EstablishCred:
		cFlag = C.PAM_ESTABLISH_CRED
	case DeleteCred:
		cFlag = C.PAM_DELETE_CRED
	case ReinitializeCred:
		cFlag = C.PAM_REINITIALIZE_CRED
	case RefreshCred:
		cFlag = C.PAM_REFRESH_CRED
	default:
		return &Error{Op: "pam_setcred", Code: int(C.PAM_BAD_ITEM), Msg: "unknown credential flag " + flag.String()}
	}
	return t.record("pam_setcred", C.pam_setcred(t.handle.pamh, cFlag))
}

// OpenSession calls pam_open_session.
func (t *Transaction) OpenSession() error {
	if t.ended {
		return ErrTransactionEnded
	}
	return t.record("pam_open_session", C.pam_open_session(t.handle.pamh, 0))
}

// CloseSession calls pam_close_session.
func (t *Transaction) CloseSession() error {
	if t.ended {
		return ErrTransactionEnded
	}
	return t.record("pam_close_session", C.pam_close_session(t.handle.pamh, 0))
}

// EnvList implements pamenv.Session. It returns nil after End.
func (t *Transaction) EnvList() pamenv.NativeList {
	if t.ended {
		return nil
	}
	return t.handle.EnvList()
}

// Environment returns a snapshot of the transaction's environment list.
func (t *Transaction) Environment(opts ...pamenv.Option) (*pamenv.EnvList, bool) {
	return pamenv.NewFetcher(DefaultReleaser(), opts...).Fetch(t)
}
