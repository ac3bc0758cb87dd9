package courseController_test

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"papyrus/models"

	"github.com/stretchr/testify/require"
)

type shareLinkData struct {
	ShareLink  string `json:"shareLink"`
	ShareToken string `json:"shareToken"`
}

func TestIssueShareLinkIsIdempotent(t *testing.T) {
	app, db, _ := newTestApp(t)
	owner, ownerToken := createUser(t, db, "u1")
	course := createCourse(t, db, owner.ID, false)
	path := fmt.Sprintf("/api/courses/%d/share-link", course.ID)

	resp, body := doJSON(t, app, http.MethodPost, path, ownerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var first shareLinkData
	require.NoError(t, json.Unmarshal(body.Data, &first))
	require.Len(t, first.ShareToken, 32)
	_, err := hex.DecodeString(first.ShareToken)
	require.NoError(t, err)

	// Issuing sets the public flag
	var got models.Course
	require.NoError(t, db.First(&got, course.ID).Error)
	require.True(t, got.Shared)

	// Second issue returns the same token
	resp, body = doJSON(t, app, http.MethodPost, path, ownerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var second shareLinkData
	require.NoError(t, json.Unmarshal(body.Data, &second))
	require.Equal(t, first.ShareToken, second.ShareToken)
}

func TestIssueShareLinkOwnerOnly(t *testing.T) {
	app, db, _ := newTestApp(t)
	owner, _ := createUser(t, db, "u1")
	_, otherToken := createUser(t, db, "u2")
	course := createCourse(t, db, owner.ID, true)

	resp, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/courses/%d/share-link", course.ID), otherToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRevokeShareLinkKeepsSharedFlag(t *testing.T) {
	app, db, _ := newTestApp(t)
	owner, ownerToken := createUser(t, db, "u1")
	course := createCourse(t, db, owner.ID, false)
	path := fmt.Sprintf("/api/courses/%d/share-link", course.ID)

	resp, body := doJSON(t, app, http.MethodPost, path, ownerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var issued shareLinkData
	require.NoError(t, json.Unmarshal(body.Data, &issued))

	resp, _ = doJSON(t, app, http.MethodDelete, path, ownerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Course
	require.NoError(t, db.First(&got, course.ID).Error)
	require.Nil(t, got.ShareToken)
	// Revoking the link does not unpublish the course
	require.True(t, got.Shared)

	// Revoking again is a no-op success
	resp, _ = doJSON(t, app, http.MethodDelete, path, ownerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Revoked token no longer resolves
	resp, _ = doJSON(t, app, http.MethodGet, "/api/courses/share/"+issued.ShareToken, "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestResolveSharedCourse(t *testing.T) {
	app, db, _ := newTestApp(t)
	owner, ownerToken := createUser(t, db, "u1")
	course := createCourse(t, db, owner.ID, false)

	_, body := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/courses/%d/share-link", course.ID), ownerToken, nil)
	var issued shareLinkData
	require.NoError(t, json.Unmarshal(body.Data, &issued))

	// No Authorization header: token possession is the capability
	resp, body := doJSON(t, app, http.MethodGet, "/api/courses/share/"+issued.ShareToken, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var resolved models.Course
	require.NoError(t, json.Unmarshal(body.Data, &resolved))
	require.Equal(t, course.ID, resolved.ID)

	var got models.Course
	require.NoError(t, db.First(&got, course.ID).Error)
	require.Equal(t, uint(1), got.Views)
}

func TestResolveUnknownTokenIsNotFound(t *testing.T) {
	app, _, _ := newTestApp(t)

	for _, token := range []string{"deadbeef", "not-even-hex", "0123456789abcdef0123456789abcdef"} {
		resp, _ := doJSON(t, app, http.MethodGet, "/api/courses/share/"+token, "", nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	}
}

func TestDownloadSharedCourse(t *testing.T) {
	app, db, _ := newTestApp(t)
	owner, ownerToken := createUser(t, db, "u1")
	course := createCourse(t, db, owner.ID, false)

	_, body := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/courses/%d/share-link", course.ID), ownerToken, nil)
	var issued shareLinkData
	require.NoError(t, json.Unmarshal(body.Data, &issued))

	resp, _ := doJSON(t, app, http.MethodGet, "/api/courses/share/"+issued.ShareToken+"/download", "", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, course.FilePath, resp.Header.Get("Location"))

	var got models.Course
	require.NoError(t, db.First(&got, course.ID).Error)
	require.Equal(t, uint(1), got.Downloads)
}

func TestShareWithUser(t *testing.T) {
	app, db, _ := newTestApp(t)
	owner, ownerToken := createUser(t, db, "u1")
	grantee, granteeToken := createUser(t, db, "u2")
	course := createCourse(t, db, owner.ID, false)
	path := fmt.Sprintf("/api/courses/%d/share-with", course.ID)

	resp, _ := doJSON(t, app, http.MethodPost, path, ownerToken, map[string]string{"email": grantee.Email})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The grantee can now read the private course
	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/courses/%d", course.ID), granteeToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Sharing twice with the same user conflicts
	resp, _ = doJSON(t, app, http.MethodPost, path, ownerToken, map[string]string{"email": grantee.Email})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// Unknown grantee
	resp, _ = doJSON(t, app, http.MethodPost, path, ownerToken, map[string]string{"email": "nobody@example.com"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnshareWithUser(t *testing.T) {
	app, db, _ := newTestApp(t)
	owner, ownerToken := createUser(t, db, "u1")
	grantee, granteeToken := createUser(t, db, "u2")
	course := createCourse(t, db, owner.ID, false)
	require.NoError(t, db.Create(&models.CourseGrant{CourseID: course.ID, UserID: grantee.ID}).Error)

	resp, _ := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/courses/%d/share-with/%d", course.ID, grantee.ID), ownerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/courses/%d", course.ID), granteeToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}
