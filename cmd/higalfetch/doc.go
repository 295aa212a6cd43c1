// Command higalfetch downloads Hi-GAL DR1 survey cutouts through the
// archive's web form and files the finished FITS images into a local
// data directory.
package main
