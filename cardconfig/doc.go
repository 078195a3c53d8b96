// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cardconfig loads the card configuration file.

# File Format

	defaults:
	  name: Javi A. Torres
	  title: Software Engineer
	  status: Online
	  contact_text: Contact
	  card_radius: 30
	  show_behind_gradient: true
	  enable_tilt: true
	  show_user_info: true
	animation:
	  smooth_duration_ms: 600
	  initial_duration_ms: 1500
	  initial_x_offset: 70
	  initial_y_offset: 60
	uploads:
	  max_dimension: 1024
	  max_size: 4 MB

Every key is optional. A missing file means the built-in defaults.

# Hot Reload

	store := cardconfig.NewStore(cfg)
	go cardconfig.Watch(ctx, path, store)

Handlers read store.Current() per request.
*/
package cardconfig
